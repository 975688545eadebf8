package java

import (
	"context"
	"os"
	"strings"
	"time"

	"jvscan/internal/env"
)

// HostEnvironment reads the locator inputs from the running system. timeout
// bounds the locator query; zero means DefaultProbeTimeout.
func HostEnvironment(conv Conventions, runner Runner, timeout time.Duration) HostEnv {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	return HostEnv{
		Getenv:   os.Getenv,
		Drives:   env.Drives,
		Registry: registryHomes,
		PathQuery: func(ctx context.Context, name string) []string {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			out, err := runner.Run(ctx, conv.Resolver, name)
			if err != nil {
				return nil
			}
			return strings.Split(out.Stdout, "\n")
		},
	}
}

func registryHomes() []string {
	homes := env.RegistryJavaHomes()
	if home, err := env.SystemJavaHome(); err == nil && home != "" {
		homes = append([]string{home}, homes...)
	}
	return homes
}
