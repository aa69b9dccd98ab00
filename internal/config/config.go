package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// DefaultPath is where Load looks for the target configuration when the
// caller does not name a file explicitly.
const DefaultPath = "postflight.yaml"

const envPrefix = "POSTFLIGHT_"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Config is the installer handoff describing the freshly provisioned target.
// The verification engine treats it as read-only.
type Config struct {
	TargetDisks      []string `yaml:"target_disks" validate:"omitempty,dive,device_path"`
	LUKSDevice       string   `yaml:"luks_device" validate:"required,device_path"`
	LUKSMappedName   string   `yaml:"luks_mapped_name" validate:"omitempty,mapper_name"`
	ZFSPoolName      string   `yaml:"zfs_pool_name" validate:"required,pool_name"`
	NewSystemMount   string   `yaml:"new_system_mount" validate:"required,abs_path"`
	NetworkInterface string   `yaml:"network_interface" validate:"required,iface_name"`
	IPAddress        string   `yaml:"ip_address" validate:"required,ip"`
}

// Load reads the target configuration from the given YAML file, falls back to
// POSTFLIGHT_* environment variables for any key the file leaves empty, and
// validates the result. An empty path means "use DefaultPath if it exists,
// otherwise rely on the environment alone".
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			msg := "invalid YAML"
			if line := extractLine(err); line > 0 {
				msg = fmt.Sprintf("invalid YAML at line %d", line)
			}
			return nil, postflighterrors.NewConfigError(path, msg, err)
		}
	case explicit || !os.IsNotExist(err):
		return nil, postflighterrors.NewConfigError(path, "cannot read configuration file", err)
	}

	cfg.applyEnvFallback()

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvFallback fills empty keys from the installer's environment. The
// file always wins when both sources supply a value.
func (c *Config) applyEnvFallback() {
	if len(c.TargetDisks) == 0 {
		if raw := os.Getenv(envPrefix + "TARGET_DISKS"); raw != "" {
			for _, disk := range strings.Split(raw, ",") {
				if disk = strings.TrimSpace(disk); disk != "" {
					c.TargetDisks = append(c.TargetDisks, disk)
				}
			}
		}
	}

	c.LUKSDevice = envFallback(c.LUKSDevice, "LUKS_DEVICE")
	c.LUKSMappedName = envFallback(c.LUKSMappedName, "LUKS_MAPPED_NAME")
	c.ZFSPoolName = envFallback(c.ZFSPoolName, "ZFS_POOL_NAME")
	c.NewSystemMount = envFallback(c.NewSystemMount, "NEW_SYSTEM_MOUNT")
	c.NetworkInterface = envFallback(c.NetworkInterface, "NETWORK_INTERFACE")
	c.IPAddress = envFallback(c.IPAddress, "IP_ADDRESS")
}

func envFallback(current, key string) string {
	if current != "" {
		return current
	}
	return os.Getenv(envPrefix + key)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
