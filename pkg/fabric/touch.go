package fabric

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/FabricAttachedMemory/Emulation/pkg/ident"
	"github.com/FabricAttachedMemory/Emulation/pkg/shm"
)

const (
	// DefaultDevice is the emulation device inside the VM.
	DefaultDevice = "/mnt/fabric_emulation"
	// DefaultHostPath is the backing file of the device on the VM host.
	DefaultHostPath = "/dev/shm/fabric_emulation"
	// RegionSize is the number of bytes mapped by default.
	RegionSize = 256

	instrumentationName = "github.com/FabricAttachedMemory/Emulation/pkg/fabric"
)

// Message is the line printed after a successful touch, pointing the
// operator at hostPath.
func Message(hostPath string) string {
	return "On the VM host, examine " + hostPath
}

// Options configures a Toucher. Zero values select the defaults.
type Options struct {
	// Device is the path opened read-write. Defaults to DefaultDevice.
	Device string
	// Size is the mapping length. Defaults to RegionSize.
	Size int
	// Create creates and sizes Device when it is missing or short.
	Create bool
	// Source provides the record written into the region. Defaults to ident.System.
	Source ident.Source

	Logger *zap.Logger
	Tracer trace.Tracer
	Meter  metric.Meter
}

// Report describes a completed touch. Populate and unmap failures do not
// fail the touch; they are kept here.
type Report struct {
	Device      string
	Size        int
	Record      ident.Record
	Written     int
	PopulateErr error
	UnmapErr    error
	Elapsed     time.Duration
}

// Toucher maps the device and writes the identification record into it.
type Toucher struct {
	opts    Options
	log     *zap.Logger
	tracer  trace.Tracer
	touches metric.Int64Counter
}

// New returns a Toucher for opts.
func New(opts Options) (*Toucher, error) {
	if opts.Device == "" {
		opts.Device = DefaultDevice
	}
	if opts.Size == 0 {
		opts.Size = RegionSize
	}
	if opts.Size < 0 {
		return nil, ErrInvalidSize
	}
	if opts.Source == nil {
		opts.Source = ident.System
	}
	t := &Toucher{
		opts:   opts,
		log:    opts.Logger,
		tracer: opts.Tracer,
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if t.tracer == nil {
		t.tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	meter := opts.Meter
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	counter, err := meter.Int64Counter("fabric.touch.count",
		metric.WithDescription("Number of touches of the fabric emulation device."))
	if err != nil {
		return nil, err
	}
	t.touches = counter
	return t, nil
}

// Touch runs New(opts) and touches once.
func Touch(ctx context.Context, opts Options) (*Report, error) {
	t, err := New(opts)
	if err != nil {
		return nil, err
	}
	return t.Touch(ctx)
}

// Touch opens and maps the device, writes the identification record into the
// mapping and unmaps it. Only open and mmap failures are returned, as *OpError.
func (t *Toucher) Touch(ctx context.Context) (*Report, error) {
	start := time.Now()
	ctx, span := t.tracer.Start(ctx, "fabric.Touch", trace.WithAttributes(
		attribute.String("fabric.device", t.opts.Device),
		attribute.Int("fabric.size", t.opts.Size),
	))
	defer span.End()

	log := t.log.With(zap.String("path", t.opts.Device), zap.Int("size", t.opts.Size))
	log.Debug("mapping region")

	region, err := shm.Open(ctx, shm.OpenOptions{
		Path:   t.opts.Device,
		Size:   t.opts.Size,
		Create: t.opts.Create,
	})
	if err != nil {
		err = wrapMapError(t.opts.Device, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.touches.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "failure"), attribute.String("op", FailureLabel(err))))
		log.Debug("mapping failed", zap.Error(err))
		return nil, err
	}
	span.AddEvent("mapped")

	report := &Report{Device: t.opts.Device, Size: t.opts.Size}

	rec, err := t.opts.Source.Identify(ctx)
	if err != nil {
		report.PopulateErr = err
		log.Debug("identification unavailable", zap.Error(err))
	} else {
		// The record is written the way uname(2) would write it: across the
		// whole page backing the mapping, not just the requested bytes.
		report.Record = rec
		report.Written = rec.MarshalTo(region.Extent())
		span.AddEvent("populated", trace.WithAttributes(attribute.Int("fabric.written", report.Written)))
		log.Debug("region populated", zap.Int("written", report.Written))
	}

	if err := region.Close(); err != nil {
		report.UnmapErr = err
		log.Debug("unmap failed", zap.Error(err))
	}
	span.AddEvent("unmapped")

	report.Elapsed = time.Since(start)
	t.touches.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "success")))
	log.Debug("touch complete", zap.Duration("elapsed", report.Elapsed))
	return report, nil
}
