package application

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/blake2b"
)

// NewSnowflakeIDs returns an id generator backed by a snowflake node. Ids are
// unique per node and increase with creation time.
func NewSnowflakeIDs(node int64) (func() int64, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", node, err)
	}
	return func() int64 { return n.Generate().Int64() }, nil
}

// PlaceholderPhoto returns the deterministic avatar used for servants
// registered without a photo.
func PlaceholderPhoto(id int64) string {
	sum := blake2b.Sum256([]byte(strconv.FormatInt(id, 10)))
	return "https://picsum.photos/seed/" + hex.EncodeToString(sum[:8]) + "/100/100"
}
