// SPDX-License-Identifier: GPL-2.0-or-later

// Command tatrace loads a captured Tile Accelerator display list,
// converts it with dctr/tr, and either reports the resulting surface
// counts or displays it in an SDL2/OpenGL window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"dctr/config"
	"dctr/conlog"
	"dctr/pvr"
	"dctr/render/glbackend"
	"dctr/texcache"
	"dctr/tr"
)

var (
	capturePath = flag.String("capture", "", "path to a captured TA context file")
	display     = flag.Bool("display", false, "open a window and draw the converted context")
	fullscreen  = flag.Bool("fullscreen", false, "run the display window fullscreen")
	endSurf     = flag.Int("end-surf", config.DefaultEndSurf, "stop drawing after this surface index (step-through debugging)")
	strict      = flag.Bool("strict", config.StrictParamSizes, "treat unsizable TA commands as fatal instead of skipping them")
)

func main() {
	flag.Parse()
	conlog.SetPrintf(func(format string, v ...interface{}) { log.Printf(format, v...) })
	config.StrictParamSizes = *strict

	if *capturePath == "" {
		fmt.Fprintln(os.Stderr, "tatrace: -capture is required")
		os.Exit(2)
	}

	ctx, err := loadCapture(*capturePath)
	if err != nil {
		log.Fatalf("tatrace: %v", err)
	}

	rc := tr.NewContext(0, 0, 0)

	if !*display {
		tr.Convert(rc, ctx, tr.Deps{FindTexture: emptyTextureCache})
		report(rc)
		return
	}

	glbackend.Run(func() {
		win, err := glbackend.Open("tatrace", ctx.VideoWidth, ctx.VideoHeight, *fullscreen)
		if err != nil {
			log.Fatalf("tatrace: open window: %v", err)
		}
		defer win.Close()

		backend, err := glbackend.New()
		if err != nil {
			log.Fatalf("tatrace: init backend: %v", err)
		}

		tr.Convert(rc, ctx, tr.Deps{Backend: backend, FindTexture: emptyTextureCache})
		report(rc)

		for !glbackend.PollQuit() {
			tr.RenderContextUntil(backend, rc, *endSurf)
			win.Swap()
		}
	})
}

func loadCapture(path string) (*tr.TAContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open capture")
	}
	defer f.Close()

	ctx, err := tr.LoadCapture(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load capture %s", path)
	}
	return ctx, nil
}

// emptyTextureCache never has an entry; fine for captures with no
// textured polygons, fatal (per spec §4.3) the moment one is hit. A
// real tool would plug in a cache that tracks actual PVR texture
// memory, which is out of this module's scope.
func emptyTextureCache(userdata any, tsp pvr.TSP, tcw pvr.TCW) *texcache.Entry {
	return nil
}

func report(rc *tr.Context) {
	fmt.Printf("surfaces: %d  vertices: %d  indices: %d\n", len(rc.Surfs), len(rc.Verts), len(rc.Indices))
	for i := 0; i < pvr.NumLists; i++ {
		fmt.Printf("  list %d: %d surfaces\n", i, len(rc.Lists[i].Surfs))
	}
}
