package main

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{LogFile: "/var/log/barq/barq.log", Port: 8080, LogLevel: logrus.InfoLevel},
		},
		{
			name: "overrides",
			env: map[string]string{
				"LOG_FILE":    "/tmp/newdir/x.log",
				"PORT":        "9090",
				"LOG_CONSOLE": "true",
				"LOG_LEVEL":   "debug",
			},
			want: Config{LogFile: "/tmp/newdir/x.log", Port: 9090, Console: true, LogLevel: logrus.DebugLevel},
		},
		{
			name: "ephemeral port",
			env:  map[string]string{"PORT": "0"},
			want: Config{LogFile: "/var/log/barq/barq.log", Port: 0, LogLevel: logrus.InfoLevel},
		},
		{
			name: "highest port",
			env:  map[string]string{"PORT": "65535"},
			want: Config{LogFile: "/var/log/barq/barq.log", Port: 65535, LogLevel: logrus.InfoLevel},
		},
		{name: "port not a number", env: map[string]string{"PORT": "notanumber"}, wantErr: true},
		{name: "empty port", env: map[string]string{"PORT": ""}, wantErr: true},
		{name: "empty log file", env: map[string]string{"LOG_FILE": ""}, wantErr: true},
		{name: "empty console flag", env: map[string]string{"LOG_CONSOLE": ""}, wantErr: true},
		{name: "port too large", env: map[string]string{"PORT": "65536"}, wantErr: true},
		{name: "negative port", env: map[string]string{"PORT": "-1"}, wantErr: true},
		{name: "bad console flag", env: map[string]string{"LOG_CONSOLE": "sometimes"}, wantErr: true},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookupEnv := func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			}

			got, err := loadConfig(lookupEnv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("loadConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
