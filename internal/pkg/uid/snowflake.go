package uid

import (
	"crypto/sha256"
	"os"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs safe across processes.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator whose node number comes from the
// SNOWFLAKE_NODE env var when set, otherwise from a hash of the
// machine identity so restarts keep the same node.
func NewSnowflake() (*Snowflake, error) {
	nodeNum, err := snowflakeNodeNumber()
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(nodeNum)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

func snowflakeNodeNumber() (int64, error) {
	if v := strings.TrimSpace(os.Getenv("SNOWFLAKE_NODE")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return n % 1024, nil
	}

	src := ""
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		src = strings.TrimSpace(string(b))
	}
	if src == "" {
		if h, err := os.Hostname(); err == nil {
			src = strings.TrimSpace(h)
		}
	}
	if src == "" {
		return 0, ErrStableNodeIdentityUnavailable
	}

	sum := sha256.Sum256([]byte(src))
	return int64(uint16(sum[0])<<8|uint16(sum[1])) % 1024, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
