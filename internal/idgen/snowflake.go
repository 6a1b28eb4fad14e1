package idgen

import (
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init 初始化雪花节点（多实例部署时 nodeID 各异）
func Init(nodeID int64) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("[IDGen] init node failed: %v", err)
	}
	node = n
}

// New 生成订单号/退款单号用的全局唯一 ID
func New() uint64 {
	if node == nil {
		panic("idgen not initialized")
	}
	return uint64(node.Generate().Int64())
}
