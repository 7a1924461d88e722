// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse builds the server Config from flags, environment
variables and an optional .env file.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Flags and Environment

	-p, --port           PORT            (default 3318)
	-t, --database-type  DATABASE_TYPE   sqlite or postgres (default sqlite)
	-d, --database-url   DATABASE_URL    (default todo.db for sqlite)
	--jwt-secret         JWT_SECRET      at least 16 bytes in auth mode
	--token-ttl          TOKEN_TTL       (default 24h)
	--bcrypt-cost        BCRYPT_COST
	--cors-origins       CORS_ORIGINS    comma separated
	--mode               TODO_MODE       auth or open
	--log-level          LOG_LEVEL
	--log-format         LOG_FORMAT      text or json
	--env-file

Flags take precedence over the environment, and the environment over
the .env file.

Config.Logger returns the slog logger for the configured level and
format.
*/
package cliparse
