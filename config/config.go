// Package config holds the settings of a contract test run and the data tables that
// parameterized tests iterate over. Settings come from built-in defaults, optionally
// overridden by a YAML file, and then by command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURL                = "https://qa-scooter.praktikum-services.ru/api/v1"
	DefaultRequestTimeout     = time.Second * 10
	DefaultServiceWaitTimeout = time.Second * 10
	DefaultLoginPrefix        = "qa-"
	DefaultUnknownCourierID   = "1"
)

// CourierCase is one row of the courier tests. The login that is actually used is made unique
// for each test by appending a random suffix to LoginPrefix and Login.
type CourierCase struct {
	Login     string `yaml:"login"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
}

// Config is the complete configuration of a test run.
type Config struct {
	URL                string        `yaml:"url"`
	RequestTimeout     time.Duration `yaml:"requestTimeout"`
	ServiceWaitTimeout time.Duration `yaml:"serviceWaitTimeout"`
	LoginPrefix        string        `yaml:"loginPrefix"`

	Couriers         []CourierCase `yaml:"couriers"`
	OrderColors      [][]string    `yaml:"orderColors"`
	NearestStations  []string      `yaml:"nearestStations"`
	UnknownCourierID string        `yaml:"unknownCourierId"`
}

// Default returns the configuration used when there is no config file.
func Default() Config {
	return Config{
		URL:                DefaultURL,
		RequestTimeout:     DefaultRequestTimeout,
		ServiceWaitTimeout: DefaultServiceWaitTimeout,
		LoginPrefix:        DefaultLoginPrefix,
		Couriers: []CourierCase{
			{Login: "Simona", Password: "123456", FirstName: "Sima"},
		},
		OrderColors: [][]string{
			{"BLACK"},
			{"GREY"},
			{"BLACK", "GREY"},
			{},
		},
		NearestStations:  []string{"110"},
		UnknownCourierID: DefaultUnknownCourierID,
	}
}

// Load reads a YAML config file. Any property the file leaves out keeps its default value; a
// table that the file does provide replaces the default table entirely.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate checks for settings that would make every test fail for the wrong reason.
func (c Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url %q must be an absolute http or https URL", c.URL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("requestTimeout must be positive")
	}
	if c.ServiceWaitTimeout < 0 {
		return errors.New("serviceWaitTimeout must not be negative")
	}
	if len(c.Couriers) == 0 {
		return errors.New("at least one courier case is required")
	}
	for i, row := range c.Couriers {
		if row.Login == "" || row.Password == "" {
			return fmt.Errorf("courier case %d: login and password are required", i+1)
		}
	}
	if c.UnknownCourierID == "" {
		return errors.New("unknownCourierId must not be empty")
	}
	return nil
}
