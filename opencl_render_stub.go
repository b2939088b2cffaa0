//go:build !opencl

package main

import "errors"

type openCLResampler struct{}

func newOpenCLResampler(width, height, gridCols, gridRows int, fp16 bool) (*openCLResampler, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (r *openCLResampler) Resample(grid *scanGrid, geo *scanGeometry, state *physicsState, liveNoise bool, dst []byte) error {
	return errors.New("OpenCL resampler unavailable")
}

func (r *openCLResampler) Close() {}

func (r *openCLResampler) DeviceName() string { return "" }
