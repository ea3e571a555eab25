// Package config loads the optional .ptcommit.yaml file that supplies
// default roots, the repository backend and the log level, and defines the
// Backend type used to select a repository implementation.
package config
