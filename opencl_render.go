//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// clFloat renders a shared tuning constant as an OpenCL float literal.
func clFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64) + "f"
}

// buildResampleKernelSource generates the device implementation of the
// per-pixel resample stage. Every tuning constant is injected from config.go
// so the device path cannot drift from the scalar reference.
func buildResampleKernelSource(fp16 bool) string {
	gridType := "float"
	load := func(idx string) string { return "grid[" + idx + "]" }
	if fp16 {
		gridType = "half"
		load = func(idx string) string { return "vload_half(" + idx + ", grid)" }
	}
	var b strings.Builder
	b.WriteString(`
static float hash_rand(uint v)
{
    v = v * 747796405u + 2891336453u;
    v ^= v >> 16;
    v *= 2654435769u;
    v ^= v >> 16;
    return (float)(v & 0xFFFFFFu) / 16777215.0f;
}

__kernel void resample(
    const int width,
    const int height,
    const int family,
    const float centerX,
    const float centerY,
    const float pixPerCm,
    const float arcRadius,
    const float halfFOV,
    const float maxDepth,
    const int gridCols,
    const int gridRows,
    const float t,
    const int liveNoise,
    const uint seed,
    __global const ` + gridType + `* grid,
    __global uchar4* out)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    float lat, depth;
    if (family == 0) {
        lat = 2.0f * (float)x / (float)(width - 1) - 1.0f;
        depth = (float)y / (float)(height - 1) * maxDepth;
    } else {
        float dx = (float)x - centerX;
        float dy = (float)y - centerY;
        float theta = atan2(dx, dy);
        float r = hypot(dx, dy) / pixPerCm - arcRadius;
        if (fabs(theta) > halfFOV || r < 0.0f || r > maxDepth) {
            out[idx] = (uchar4)(0, 0, 0, 255);
            return;
        }
        lat = theta / halfFOV;
        depth = fmin(r, maxDepth);
    }
    float u = (lat + 1.0f) * 0.5f;
    float v = depth / maxDepth;
    float fx = u * (float)(gridCols - 1);
    float fy = v * (float)(gridRows - 1);
    int x0 = min((int)fx, gridCols - 2);
    int y0 = min((int)fy, gridRows - 2);
    float tx = fx - (float)x0;
    float ty = fy - (float)y0;
    float ga = ` + load("y0*gridCols+x0") + `;
    float gb = ` + load("y0*gridCols+x0+1") + `;
    float gc = ` + load("(y0+1)*gridCols+x0") + `;
    float gd = ` + load("(y0+1)*gridCols+x0+1") + `;
    float it = mix(mix(ga, gb, tx), mix(gc, gd, tx), ty);
`)
	fmt.Fprintf(&b, `    if (liveNoise != 0) {
        float m = 1.0f
            + %s * sin(6.2831853f * %s * t)
            + %s * sin(6.2831853f * %s * t + (float)y * 0.02f)
            + %s * (hash_rand((uint)idx + seed) * 2.0f - 1.0f);
        it *= m;
        float sweep = fmod(t * %s, 1.0f) * (float)height;
        float sd = (float)y - sweep;
        it += %s * exp(-sd * sd / (2.0f * %s * %s));
        it += it * %s * sin((float)x * %s + t * %s);
    }
    float af = fabs(lat);
    float feather = 1.0f;
    if (af > 1.0f - %s) {
        feather = fmax(0.0f, (1.0f - af) / %s);
    }
    float fade = 1.0f;
    if (depth < %s) {
        fade = fmax(depth, 0.0f) / %s;
    }
    it = clamp(it * feather * fade, 0.0f, 1.0f);
    uchar g = (uchar)(it * 255.0f);
    out[idx] = (uchar4)(g, g, g, 255);
}`,
		clFloat(liveFlickerAmpA), clFloat(liveFlickerHzA),
		clFloat(liveFlickerAmpB), clFloat(liveFlickerHzB),
		clFloat(liveJitterAmp),
		clFloat(scanlineSweepHz),
		clFloat(scanlineAmp), clFloat(scanlineSigmaPx), clFloat(scanlineSigmaPx),
		clFloat(bandAmp), clFloat(bandSpatialFreq), clFloat(bandTemporalRate),
		clFloat(featherFrac), clFloat(featherFrac),
		clFloat(nearFadeDepth), clFloat(nearFadeDepth),
	)
	return b.String()
}

// openCLResampler executes the per-pixel resample stage on an OpenCL device.
// The coarse grid is evaluated by the shared scalar code and uploaded each
// frame, optionally as binary16.
type openCLResampler struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	gridBuf    *cl.MemObject
	outBuf     *cl.MemObject
	width      int
	height     int
	gridCols   int
	gridRows   int
	fp16       bool
	halfBuf    []uint16
	deviceName string
	frame      uint32
}

// pickDevice prefers a GPU and falls back to any CPU device.
func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// newOpenCLResampler negotiates a device and builds the generated kernel. An
// error here means the caller stays on the scalar path; it is never fatal.
func newOpenCLResampler(width, height, gridCols, gridRows int, fp16 bool) (*openCLResampler, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	r := &openCLResampler{
		context:    context,
		width:      width,
		height:     height,
		gridCols:   gridCols,
		gridRows:   gridRows,
		fp16:       fp16,
		deviceName: device.Name(),
	}
	r.queue, err = context.CreateCommandQueue(device, 0)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	r.program, err = context.CreateProgramWithSource([]string{buildResampleKernelSource(fp16)})
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := r.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		r.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	r.kernel, err = r.program.CreateKernel("resample")
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("creating resample kernel: %w", err)
	}
	gridBytes := gridCols * gridRows * 4
	if fp16 {
		gridBytes = gridCols * gridRows * 2
		r.halfBuf = make([]uint16, gridCols*gridRows)
	}
	r.gridBuf, err = context.CreateEmptyBuffer(cl.MemReadOnly, gridBytes)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("allocating grid buffer: %w", err)
	}
	r.outBuf, err = context.CreateEmptyBuffer(cl.MemWriteOnly, width*height*4)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("allocating output buffer: %w", err)
	}
	return r, nil
}

// Resample runs the device kernel for one frame, producing the same
// observable output as Renderer.resampleScalar.
func (r *openCLResampler) Resample(grid *scanGrid, geo *scanGeometry, state *physicsState, liveNoise bool, dst []byte) error {
	if grid.cols != r.gridCols || grid.rows != r.gridRows {
		return fmt.Errorf("grid is %dx%d, resampler built for %dx%d", grid.cols, grid.rows, r.gridCols, r.gridRows)
	}
	if len(dst) != r.width*r.height*4 {
		return fmt.Errorf("unexpected frame buffer size %d", len(dst))
	}
	if r.fp16 {
		float32ToHalf(r.halfBuf, grid.cells)
		byteLen := len(r.halfBuf) * 2
		if _, err := r.queue.EnqueueWriteBuffer(r.gridBuf, false, 0, byteLen, unsafe.Pointer(&r.halfBuf[0]), nil); err != nil {
			return fmt.Errorf("writing grid buffer: %w", err)
		}
	} else {
		if _, err := r.queue.EnqueueWriteBufferFloat32(r.gridBuf, false, 0, grid.cells, nil); err != nil {
			return fmt.Errorf("writing grid buffer: %w", err)
		}
	}
	family := int32(1)
	if geo.family == FamilyLinear {
		family = 0
	}
	live := int32(0)
	if liveNoise {
		live = 1
	}
	r.frame++
	if err := r.kernel.SetArgs(
		int32(r.width),
		int32(r.height),
		family,
		float32(geo.centerX),
		float32(geo.centerY),
		float32(geo.pixPerCm),
		float32(geo.arcRadius),
		float32(geo.halfFOV),
		float32(geo.maxDepth),
		int32(r.gridCols),
		int32(r.gridRows),
		float32(state.t),
		live,
		r.frame*2654435761,
		r.gridBuf,
		r.outBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := r.queue.EnqueueNDRangeKernel(r.kernel, nil, []int{r.width * r.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing resample kernel: %w", err)
	}
	if _, err := r.queue.EnqueueReadBuffer(r.outBuf, true, 0, len(dst), unsafe.Pointer(&dst[0]), nil); err != nil {
		return fmt.Errorf("reading output buffer: %w", err)
	}
	return nil
}

func (r *openCLResampler) Close() {
	if r.outBuf != nil {
		r.outBuf.Release()
		r.outBuf = nil
	}
	if r.gridBuf != nil {
		r.gridBuf.Release()
		r.gridBuf = nil
	}
	if r.kernel != nil {
		r.kernel.Release()
		r.kernel = nil
	}
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.context != nil {
		r.context.Release()
		r.context = nil
	}
}

func (r *openCLResampler) DeviceName() string {
	return r.deviceName
}
