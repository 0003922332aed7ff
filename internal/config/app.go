package config

type AppConfig struct {
	Server   ServerConfig
	Debounce DebounceConfig
	Log      LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	debounceCfg, err := LoadDebounce()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:   serverCfg,
		Debounce: debounceCfg,
		Log:      logCfg,
	}, nil
}
