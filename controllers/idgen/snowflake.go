package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"
)

var node *snowflake.Node

func Init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		logrus.Fatalf("Failed to init Snowflake: %v", err)
	}
}

func GenerateID() int64 {
	return node.Generate().Int64()
}

// GenerateInventoryID builds an inventory id for items created without
// one. Prefixed so generated ids are obvious next to hand-assigned ones.
func GenerateInventoryID() string {
	return fmt.Sprintf("INV-%d", GenerateID())
}
