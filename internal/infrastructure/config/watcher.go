package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ChangeHandler receives the re-decoded configuration after the config file changed
type ChangeHandler func(updated *Config, event fsnotify.Event)

// ReloadErrorHandler receives the reason a changed config file could not be applied
type ReloadErrorHandler func(err error, event fsnotify.Event)

// LoadAndWatch loads the configuration and keeps watching the config file.
// Both handlers run on the watcher goroutine for every write or re-create of the file.
// A file that fails to read or decode goes to onError and the previous configuration
// stays in effect.
func LoadAndWatch(onChange ChangeHandler, onError ReloadErrorHandler) (*Config, error) {
	cfg, v, err := load()
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(reloadHandler(v, cfg.Environment, onChange, onError))
	v.WatchConfig()

	return cfg, nil
}

func reloadHandler(v *viper.Viper, env string, onChange ChangeHandler, onError ReloadErrorHandler) func(fsnotify.Event) {
	return func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		// viper swallows its own read error before calling back, so read again to surface it
		if err := v.ReadInConfig(); err != nil {
			onError(fmt.Errorf("error reading config file: %w", err), event)
			return
		}
		updated, err := decode(v, env)
		if err != nil {
			onError(err, event)
			return
		}
		onChange(updated, event)
	}
}
