package discovery

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/jsphonorio/ControllerTools/internal/controller"
	"github.com/jsphonorio/ControllerTools/internal/sysfs"
)

// loadFixture reads one fake controller description from the given JSON
// file. A missing file is normal and injects nothing; a malformed file is
// logged and likewise injects nothing. This path never fails discovery.
func loadFixture(path string) (controller.Controller, bool) {
	data, err := sysfs.FS.ReadFile(path)
	if err != nil {
		return controller.Controller{}, false
	}

	var fake controller.Controller
	if err := json.Unmarshal(data, &fake); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("could not parse fake controller")
		return controller.Controller{}, false
	}

	fake.IsFake = true
	fake.Status = fake.Status.OrUnknown()
	if fake.Capacity > 100 {
		fake.Capacity = 100
	}
	log.Debug().Str("path", path).Str("name", fake.Name).Msg("loaded fake controller")
	return fake, true
}
