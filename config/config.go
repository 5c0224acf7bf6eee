package config

import (
	"encoding/json"
	"io"
	"os"
	"path"
	"reflect"
)

// Config is a JSON file backed setting of type T. The file lives under the
// config dir and is named after T. A missing file is written with the default.
type Config[T any] struct {
	defaultValue T
	dir          string

	value T
}

const (
	DataDir   = "data"
	ConfigDir = DataDir + "/config"
)

// New keeps its file in dir, ConfigDir when dir is empty.
func New[T any](defaultValue T, dir string) *Config[T] {
	if dir == "" {
		dir = ConfigDir
	}
	return &Config[T]{defaultValue: defaultValue, dir: dir}
}

func (c *Config[T]) FilePath() string {
	name := reflect.TypeOf((*T)(nil)).Elem().Name()
	return path.Join(c.dir, name+".json")
}

func (c *Config[T]) Init() error {
	f, err := os.Open(c.FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			err = c.Update(func(t *T) {
				*t = c.defaultValue
			})
			if err != nil {
				return err
			}
		} else {
			return err
		}
	} else {
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		c.value = c.defaultValue
		err = json.Unmarshal(b, &c.value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Config[T]) Get() T {
	return c.value
}

func (c *Config[T]) Update(updater func(*T)) error {
	temp := c.value
	updater(&temp)
	b, err := json.MarshalIndent(temp, "", "  ")
	if err != nil {
		return err
	}
	err = os.MkdirAll(path.Dir(c.FilePath()), 0755)
	if err != nil {
		return err
	}
	err = os.WriteFile(c.FilePath(), b, 0644)
	if err != nil {
		return err
	}
	c.value = temp
	return nil
}
