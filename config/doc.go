// Package config loads stack configuration from an embedded default, an
// optional YAML file and CARDSTACK_ environment variables, and turns it into
// cardstack cards.
package config
