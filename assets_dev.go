//go:build !release

package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func init() {
	log.Info().Msg("running in debug mode, using live assets from filesystem")
	templatesFS = os.DirFS("templates")
	staticFS = os.DirFS("static")
}
