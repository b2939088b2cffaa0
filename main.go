package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := newGame(seed)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	if *useOpenCLFlag {
		if rs, clErr := newOpenCLResampler(rasterW, rasterH, gridCols, gridRows, *preferFP16Flag); clErr != nil {
			log.Printf("OpenCL unavailable, staying on the scalar path: %v", clErr)
		} else {
			log.Printf("OpenCL resampler enabled (device: %s)", rs.DeviceName())
			g.deviceName = rs.DeviceName()
			g.renderer.SetResampler(rs)
			defer rs.Close()
		}
	}

	if *recordDefaultPGO {
		stop, pErr := startProfileRecording("default.pgo")
		if pErr != nil {
			log.Fatalf("starting profile capture: %v", pErr)
		}
		g.stopProfile = stop
		g.enableSweep(pgoRecordDuration)
	}

	ebiten.SetWindowSize(rasterW*windowScale, rasterH*windowScale)
	ebiten.SetWindowTitle("B-Mode Phantom")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
