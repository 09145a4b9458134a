package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Notifier struct {
		BaseURL        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"notifier,omitempty"`

	OTP struct {
		VerificationTTL Duration `json:"verification_ttl"`
		ResetTTL        Duration `json:"reset_ttl"`
		ResendInterval  Duration `json:"resend_interval"`
		MaxAttempts     int      `json:"max_attempts"`
		SweepInterval   Duration `json:"sweep_interval"`
	} `json:"otp,omitempty"`

	Bootstrap struct {
		AdminName     string `json:"admin_name"`
		AdminUsername string `json:"admin_username"`
		AdminPassword string `json:"admin_password"`
	} `json:"bootstrap,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:    jsonCfg.App.BcryptCost,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Notifier: Notifier{
			BaseURL:        jsonCfg.Notifier.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Notifier.RequestTimeout),
		},
		OTP: OTP{
			VerificationTTL: time.Duration(jsonCfg.OTP.VerificationTTL),
			ResetTTL:        time.Duration(jsonCfg.OTP.ResetTTL),
			ResendInterval:  time.Duration(jsonCfg.OTP.ResendInterval),
			MaxAttempts:     jsonCfg.OTP.MaxAttempts,
			SweepInterval:   time.Duration(jsonCfg.OTP.SweepInterval),
		},
		Bootstrap: Bootstrap{
			AdminName:     jsonCfg.Bootstrap.AdminName,
			AdminUsername: jsonCfg.Bootstrap.AdminUsername,
			AdminPassword: jsonCfg.Bootstrap.AdminPassword,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
