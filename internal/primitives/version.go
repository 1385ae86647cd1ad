package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion returns config.Version when set, otherwise the first eight
// bytes of SHA256 over the rig's JSON form. Equal rigs get equal versions.
func ComputeVersion(config *RigConfig) string {
	if config.Version != "" {
		return config.Version
	}

	data, err := json.Marshal(config)
	if err != nil {
		return "invalid"
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
