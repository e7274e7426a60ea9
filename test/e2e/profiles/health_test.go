//go:build e2e

package profiles_test

import (
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	client, _ := setupContainer(t, containerOptions{})

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
}
