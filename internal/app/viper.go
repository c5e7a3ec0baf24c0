package app

import (
	"fmt"

	"github.com/saradorri/casino/internal/config"
)

func (a *application) setupViper(path string) error {
	c, err := config.Load(path, config.GetEnvironment())
	if err != nil {
		return err
	}
	a.config = c

	fmt.Println("[x] Config loaded successfully")
	return nil
}
