/*
Package config loads entitymeta settings with viper.

Settings come from entitymeta.yaml in the working directory (or an explicit
file), with ENTITYMETA_* environment variables taking precedence. A .env file is
loaded first when present.

	log_level: debug
	field_access: true
	type_mapping_file: types.yaml
	type_overrides:
	  int32: varint
	  uuid.UUID: timeuuid

Use entitymeta.NewFromConfig to build a mapping context from a Config.
*/
package config
