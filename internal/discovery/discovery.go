// Package discovery enumerates connected game controllers, collapses
// duplicate enumeration records and resolves battery state through layered
// fallback lookups.
package discovery

import (
	"fmt"

	"github.com/jsphonorio/ControllerTools/internal/config"
	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/hidsrc"
)

// Controllers runs one full discovery pass: enumerate, classify, dedupe,
// resolve battery state and assemble. The pass is synchronous and holds no
// state between calls; only an unusable enumeration source is fatal, every
// battery lookup failure degrades to default values instead.
func Controllers(conf *config.Config) ([]controller.Controller, error) {
	records, err := hidsrc.Source.List()
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	var controllers []controller.Controller

	if conf.Fixture.Enabled {
		if fake, ok := loadFixture(conf.FixturePath()); ok {
			controllers = append(controllers, fake)
		}
	}

	controllers = append(controllers, nintendoControllers(records)...)
	controllers = append(controllers, xboxControllers(records)...)
	controllers = append(controllers, playstationControllers(records)...)

	accessories, err := accessoryControllers()
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	controllers = append(controllers, accessories...)

	return controllers, nil
}

// Result carries the outcome of an asynchronous discovery pass.
type Result struct {
	Controllers []controller.Controller
	Err         error
}

// ControllersAsync runs the blocking discovery pass on its own goroutine so
// the caller's loop is never stalled by hardware I/O. The returned channel
// is buffered and delivers exactly one result.
func ControllersAsync(conf *config.Config) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		controllers, err := Controllers(conf)
		ch <- Result{Controllers: controllers, Err: err}
	}()
	return ch
}
