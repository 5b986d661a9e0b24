package main

import (
	"encoding/hex"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bluetoe-go/bluetoe"
)

// schemaConfig describes a server's services and characteristics as a
// JSON document, mirroring how rigado/ble accepts an externally supplied
// configuration file instead of a compiled-in schema.
type schemaConfig struct {
	Name     string          `json:"name"`
	Services []serviceConfig `json:"services"`
}

type serviceConfig struct {
	UUID            string                 `json:"uuid"`
	Characteristics []characteristicConfig `json:"characteristics"`
}

type characteristicConfig struct {
	UUID string `json:"uuid"`
	// Value is a hex-encoded static value. At most one of Value or Text
	// may be set; with neither, the characteristic's value is empty.
	Value string `json:"value"`
	// Text is a UTF-8 static value, used instead of Value for readable
	// fixtures.
	Text string `json:"text"`
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// loadSchema reads a schemaConfig from path.
func loadSchema(path string) (schemaConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return schemaConfig{}, errors.Wrapf(err, "opening schema file %q", path)
	}
	defer f.Close()

	var cfg schemaConfig
	if err := jsonAPI.NewDecoder(f).Decode(&cfg); err != nil {
		return schemaConfig{}, errors.Wrapf(err, "decoding schema file %q", path)
	}
	return cfg, nil
}

// buildServer constructs a *bluetoe.Server from a decoded schemaConfig.
func buildServer(cfg schemaConfig) (*bluetoe.Server, error) {
	srv := bluetoe.NewServer()
	if cfg.Name != "" {
		srv.Option(bluetoe.Name(cfg.Name))
	}

	for _, sc := range cfg.Services {
		u, err := bluetoe.ParseUUID(sc.UUID)
		if err != nil {
			return nil, errors.Wrapf(err, "service uuid %q", sc.UUID)
		}
		svc := srv.AddService(u)

		for _, cc := range sc.Characteristics {
			cu, err := bluetoe.ParseUUID(cc.UUID)
			if err != nil {
				return nil, errors.Wrapf(err, "characteristic uuid %q", cc.UUID)
			}

			value, err := characteristicValue(cc)
			if err != nil {
				return nil, err
			}
			svc.AddCharacteristic(cu).StaticValue(value)
		}
	}

	if err := srv.Build(); err != nil {
		return nil, err
	}
	return srv, nil
}

func characteristicValue(cc characteristicConfig) ([]byte, error) {
	switch {
	case cc.Value != "" && cc.Text != "":
		return nil, errors.Errorf("characteristic %q: set only one of value or text", cc.UUID)
	case cc.Text != "":
		return []byte(cc.Text), nil
	case cc.Value != "":
		b, err := hex.DecodeString(cc.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "characteristic %q: invalid hex value", cc.UUID)
		}
		return b, nil
	default:
		return nil, nil
	}
}
