package host

import "fmt"

const (
	KeyPortPrefix = "ports"
)

// PortPath defines the path under which ports paths are stored
func PortPath(portID string) string {
	return fmt.Sprintf("%s/%s", KeyPortPrefix, portID)
}
