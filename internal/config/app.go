package config

type AppConfig struct {
	Server  ServerConfig
	Economy EconomyConfig
	Log     LogConfig
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
	economyCfg, err := LoadEconomy()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:  serverCfg,
		Economy: economyCfg,
		Log:     logCfg,
	}, nil
}
