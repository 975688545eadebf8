//go:build windows

package env

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const systemEnvRegPath = `System\CurrentControlSet\Control\Session Manager\Environment`

// Product keys Java installers register their homes under
var javaSoftKeys = []string{
	`SOFTWARE\JavaSoft\JDK`,
	`SOFTWARE\JavaSoft\JRE`,
	`SOFTWARE\JavaSoft\Java Development Kit`,
	`SOFTWARE\JavaSoft\Java Runtime Environment`,
	`SOFTWARE\WOW6432Node\JavaSoft\Java Development Kit`,
	`SOFTWARE\WOW6432Node\JavaSoft\Java Runtime Environment`,
}

// SystemJavaHome returns the machine-wide JAVA_HOME from the registry. It can
// differ from the process environment until the terminal is restarted.
func SystemJavaHome() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, systemEnvRegPath, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue("JAVA_HOME")
	if err != nil {
		return "", fmt.Errorf("JAVA_HOME not set: %w", err)
	}
	return value, nil
}

// RegistryJavaHomes returns every JavaHome value recorded under the JavaSoft keys
func RegistryJavaHomes() []string {
	var homes []string
	for _, path := range javaSoftKeys {
		homes = append(homes, readJavaHomes(path)...)
	}
	return homes
}

func readJavaHomes(path string) []string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil
	}
	defer key.Close()

	versions, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil
	}

	homes := make([]string, 0, len(versions))
	for _, v := range versions {
		sub, err := registry.OpenKey(key, v, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		if home, _, err := sub.GetStringValue("JavaHome"); err == nil && home != "" {
			homes = append(homes, home)
		}
		sub.Close()
	}
	return homes
}

// Drives returns the roots of the drive letters present on this machine
func Drives() []string {
	var drives []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err == nil {
			drives = append(drives, root)
		}
	}
	return drives
}
