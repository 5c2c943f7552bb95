// Package config provides configuration parsing for the regform server.
//
// The configuration is stored in regform.json (or regform.yaml) next to
// the binary's working directory. Any value can be overridden from the
// environment with a REGFORM_ prefix.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "allowedOrigins": ["https://example.ru"]
//	  },
//	  "form": {
//	    "selector": ".reg_form_block form",
//	    "markupFile": "register.html",
//	    "sanitize": true,
//	    "preset": "placeholders",
//	    "bindings": {"email": "input#mail"}
//	  },
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "log": {"level": "debug", "format": "json"},
//	  "tracing": {"enabled": true, "endpoint": "localhost:4318"}
//	}
//
// # Environment
//
//	REGFORM_SERVER_PORT=9000
//	REGFORM_SERVER_ALLOWED_ORIGINS=https://a.ru,https://b.ru
//	REGFORM_FORM_PRESET=placeholders
//	REGFORM_LOG_LEVEL=debug
//
// # Usage
//
//	cfg, err := config.Resolve("", ".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Address())
package config
