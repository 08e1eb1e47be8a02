package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memSource(t *testing.T, files map[string]string) *Source {
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return &Source{Fs: fs, Paths: DefaultPaths}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		want   string
		wantOk bool
	}{
		{"none", nil, "", false},
		{"etc", []string{"/etc/jailcat.conf"}, "/etc/jailcat.conf", true},
		{"local", []string{"/usr/local/etc/jailcat.conf"}, "/usr/local/etc/jailcat.conf", true},
		{"both prefers etc", []string{"/usr/local/etc/jailcat.conf", "/etc/jailcat.conf"}, "/etc/jailcat.conf", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := make(map[string]string)
			for _, f := range tt.files {
				files[f] = ""
			}
			got, ok, err := memSource(t, files).Find()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	s := memSource(t, map[string]string{
		"/etc/jailcat.conf": `
[sandbox]
user = "nobody"
chroot = "/srv/jail"

[io]
buffer = "64K"
`,
	})
	cfg, err := s.Load("/etc/jailcat.conf")
	require.NoError(t, err)
	assert.Equal(t, Sandbox{User: "nobody", Chroot: "/srv/jail"}, cfg.Sandbox)
	assert.Equal(t, 64*1024, cfg.BufferSize())
}

func TestLoadKeepsDefaults(t *testing.T) {
	s := memSource(t, map[string]string{
		"/etc/jailcat.conf": "[sandbox]\nuser = \"nobody\"\n",
	})
	cfg, err := s.Load("/etc/jailcat.conf")
	require.NoError(t, err)
	assert.Equal(t, "nobody", cfg.Sandbox.User)
	assert.Empty(t, cfg.Sandbox.Chroot)
	assert.Equal(t, Default().BufferSize(), cfg.BufferSize())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[sandbox\nuser = 1"},
		{"unknown key", "[sandbox]\nuid = 0\n"},
		{"wrong type", "[sandbox]\nuser = 1000\n"},
		{"bad size", "[io]\nbuffer = \"lots\"\n"},
		{"zero size", "[io]\nbuffer = \"0\"\n"},
		{"huge size", "[io]\nbuffer = \"64G\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memSource(t, map[string]string{"/etc/jailcat.conf": tt.content})
			_, err := s.Load("/etc/jailcat.conf")
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := memSource(t, nil).Load("/etc/jailcat.conf")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JAIL_USER", "daemon")
	t.Setenv("JAIL_BUFFER_SIZE", "1M")
	s := memSource(t, map[string]string{
		"/etc/jailcat.conf": "[sandbox]\nuser = \"nobody\"\nchroot = \"/srv/jail\"\n",
	})
	cfg, err := s.Load("/etc/jailcat.conf")
	require.NoError(t, err)
	assert.Equal(t, Sandbox{User: "daemon", Chroot: "/srv/jail"}, cfg.Sandbox)
	assert.Equal(t, 1024*1024, cfg.BufferSize())
}

func TestLoadSizeLimit(t *testing.T) {
	s := memSource(t, map[string]string{"/etc/jailcat.conf": "[io]\nbuffer = \"16M\"\n"})
	cfg, err := s.Load("/etc/jailcat.conf")
	require.NoError(t, err)
	assert.Equal(t, 16*1024*1024, cfg.BufferSize())

	t.Setenv("JAIL_BUFFER_SIZE", "17M")
	_, err = s.Load("/etc/jailcat.conf")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNewSourceEnvPath(t *testing.T) {
	t.Setenv("JAIL_CONFIG", "/run/jailcat.conf")
	s, err := NewSource()
	require.NoError(t, err)
	assert.Equal(t, []string{"/run/jailcat.conf"}, s.Paths)
	assert.True(t, s.Explicit)
}

func TestNewSourceDefaultPaths(t *testing.T) {
	t.Setenv("JAIL_CONFIG", "")
	s, err := NewSource()
	require.NoError(t, err)
	assert.Equal(t, DefaultPaths, s.Paths)
	assert.False(t, s.Explicit)
}

func TestFindExplicitMissing(t *testing.T) {
	s := memSource(t, map[string]string{"/etc/jailcat.conf": ""})
	s.Paths = []string{"/etc/jailcat.cnof"}
	s.Explicit = true

	path, ok, err := s.Find()
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, ok)
	assert.Empty(t, path)

	s.Paths = []string{"/etc/jailcat.conf"}
	path, ok, err = s.Find()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/etc/jailcat.conf", path)
}

func TestFindExplicitEnvPathMissing(t *testing.T) {
	t.Setenv("JAIL_CONFIG", "/etc/jailcat.cnof")
	s, err := NewSource()
	require.NoError(t, err)
	s.Fs = afero.NewMemMapFs()

	_, ok, err := s.Find()
	assert.ErrorIs(t, err, ErrConfig)
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, Sandbox{}, cfg.Sandbox)
	assert.Equal(t, 32*1024, cfg.BufferSize())
	assert.Equal(t, "32KiB", cfg.IO.Buffer.String())
}
