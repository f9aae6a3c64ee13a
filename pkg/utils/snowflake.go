package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Mutex
)

// InitSnowflake 初始化全局雪花节点，node取值0~1023
func InitSnowflake(nodeID int64) error {
	nodeOnce.Lock()
	defer nodeOnce.Unlock()
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// GenerateID 生成用户/视频/评论ID
func GenerateID() int64 {
	nodeOnce.Lock()
	if node == nil {
		// 如果未初始化，使用默认配置
		node, _ = snowflake.NewNode(1)
	}
	n := node
	nodeOnce.Unlock()
	return n.Generate().Int64()
}
