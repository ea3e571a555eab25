package main

import (
	"fmt"

	"github.com/GaiaWorld/pt-commit-tool/internal/config"
	"github.com/GaiaWorld/pt-commit-tool/internal/git"
	"github.com/GaiaWorld/pt-commit-tool/internal/logging"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs/gogit"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	configFileName = config.FileName

	flagPtRoot   = "pt-root-path"
	flagPiPtRoot = "pi-pt-root-path"
)

// env holds the merged flag and config settings for one command run.
type env struct {
	cmd     *cobra.Command
	cfg     *config.File // may be nil
	backend config.Backend
}

// loadEnv reads the config file, configures logging and selects the backend.
// Explicit flags win over the config file, which wins over defaults.
func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.File
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(configFileName)
	}
	if err != nil {
		return nil, err
	}

	e := &env{cmd: cmd, cfg: cfg}

	level := e.setting("log-level", func(c *config.File) string { return c.LogLevel }, "")
	if err := logging.Setup(cmd.ErrOrStderr(), level); err != nil {
		return nil, err
	}

	e.backend, err = config.ParseBackend(e.setting("backend", func(c *config.File) string { return c.Backend }, ""))
	if err != nil {
		return nil, err
	}

	log.Debug().Str("config", path).Bool("config_loaded", cfg != nil).Str("backend", string(e.backend)).Msg("environment loaded")
	return e, nil
}

// setting returns the flag value if it was set, else the config value, else def.
func (e *env) setting(flag string, fromConfig func(*config.File) string, def string) string {
	if e.cmd.Flags().Changed(flag) {
		v, _ := e.cmd.Flags().GetString(flag)
		return v
	}
	if e.cfg != nil {
		if v := fromConfig(e.cfg); v != "" {
			return v
		}
	}
	return def
}

// ptRoot returns the directory holding the checkouts.
func (e *env) ptRoot() string {
	return e.setting(flagPtRoot, func(c *config.File) string { return c.PtRootPath }, "")
}

// piPtRoot returns the directory holding the pin file.
func (e *env) piPtRoot(def string) string {
	return e.setting(flagPiPtRoot, func(c *config.File) string { return c.PiPtRootPath }, def)
}

// requireRoots returns both roots or an error naming the missing flag.
func (e *env) requireRoots() (ptRoot, piPtRoot string, err error) {
	ptRoot, piPtRoot = e.ptRoot(), e.piPtRoot("")
	if ptRoot == "" {
		return "", "", fmt.Errorf("--%s is required", flagPtRoot)
	}
	if piPtRoot == "" {
		return "", "", fmt.Errorf("--%s is required", flagPiPtRoot)
	}
	return ptRoot, piPtRoot, nil
}

func (e *env) opener() vcs.Opener {
	return newOpener(e.backend)
}

func newOpener(b config.Backend) vcs.Opener {
	if b == config.BackendGit {
		return git.New()
	}
	return gogit.New()
}
