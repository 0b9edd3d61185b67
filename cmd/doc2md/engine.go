// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/doc2md/internal/container"
	"github.com/pdiddy/doc2md/internal/convert"
	"github.com/pdiddy/doc2md/pkg/types"
)

// newConverter builds the converter for c, adding the markitdown reader
// when it is enabled and a container runtime with the image is present.
// A missing runtime or image is logged and the built-in formats remain.
func newConverter(c types.Config, log zerolog.Logger) *convert.Converter {
	conv := convert.NewConverter(c.PDF, log)
	if !c.Markitdown.Enabled {
		return conv
	}

	rt, err := container.DetectRuntime()
	if err != nil {
		log.Warn().Err(err).Msg("markitdown disabled")
		return conv
	}
	if err := convert.RegisterMarkitdown(conv, rt, c.Markitdown.Extensions); err != nil {
		log.Warn().Err(err).Msg("markitdown disabled")
		return conv
	}
	log.Debug().Str("runtime", rt.Name()).Strs("extensions", c.Markitdown.Extensions).Msg("markitdown enabled")
	return conv
}
