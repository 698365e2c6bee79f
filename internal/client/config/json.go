package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/selleradmin/internal/flagx"
	"github.com/dmitrijs2005/selleradmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	LoginID            string         `json:"login_id"`
}

// parseJson overlays Config with values loaded from the file named by
// -c/-config. Read or unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LoginID != "" {
		cfg.LoginID = jc.LoginID
	}
}
