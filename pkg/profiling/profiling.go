package profiling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/radshield/radshield-web/config"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultAppName        = "radshield-web"
	defaultUploadInterval = 15 * time.Second
)

// sampleGroups maps O11Y_PROFILING_SAMPLE_TYPES entries to pyroscope profile
// types, in the order they are reported when the variable is empty
var sampleGroups = []struct {
	name  string
	types []pyroscope.ProfileType
}{
	{"cpu", []pyroscope.ProfileType{pyroscope.ProfileCPU}},
	{"alloc_space", []pyroscope.ProfileType{pyroscope.ProfileAllocSpace}},
	{"alloc_objects", []pyroscope.ProfileType{pyroscope.ProfileAllocObjects}},
	{"inuse", []pyroscope.ProfileType{pyroscope.ProfileInuseSpace, pyroscope.ProfileInuseObjects}},
	{"goroutines", []pyroscope.ProfileType{pyroscope.ProfileGoroutines}},
	{"mutex", []pyroscope.ProfileType{pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration}},
	{"block", []pyroscope.ProfileType{pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration}},
}

// InitProfiler starts pushing continuous profiles to Pyroscope. The returned
// func stops the profiler.
func InitProfiler(cfg config.ProfilingConfig, o11y config.ObservabilityConfig, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	types, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	upload := defaultUploadInterval
	if cfg.UploadIntervalSeconds > 0 {
		upload = time.Duration(cfg.UploadIntervalSeconds) * time.Second
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = defaultAppName
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		UploadRate:      upload,
		ProfileTypes:    types,
		Tags:            buildTags(o11y, environment),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Int("profile_types", len(types)),
		zap.Duration("upload_interval", upload),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// Do runs fn with its samples labelled by operation, so quote submissions and
// PDF rendering can be told apart from page rendering in the flame graphs.
// Without a running profiler the labels are simply unused.
func Do(ctx context.Context, operation string, fn func(context.Context)) {
	pyroscope.TagWrapper(ctx, pyroscope.Labels("operation", operation), fn)
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	wanted := map[string]bool{}
	for _, raw := range strings.Split(value, ",") {
		if key := strings.ToLower(strings.TrimSpace(raw)); key != "" {
			wanted[key] = true
		}
	}

	var types []pyroscope.ProfileType
	for _, g := range sampleGroups {
		if len(wanted) == 0 || wanted[g.name] {
			types = append(types, g.types...)
			delete(wanted, g.name)
		}
	}
	for key := range wanted {
		return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
	}
	return types, nil
}

func buildTags(o11y config.ObservabilityConfig, environment string) map[string]string {
	tags := map[string]string{}
	add := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			tags[k] = v
		}
	}
	add("service_name", o11y.ServiceName)
	add("namespace", o11y.ServiceNamespace)
	add("environment", environment)
	add("service_version", o11y.ServiceVersion)
	add("instance", o11y.ServiceInstanceID)
	return tags
}
