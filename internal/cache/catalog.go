package cache

import (
	"context"
	"time"
)

const catalogSnapshotKey = "catalog:snapshot"

// GetCatalogSnapshot 读取商城目录快照（默认筛选首屏）
func GetCatalogSnapshot(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, catalogSnapshotKey, dest)
}

// SetCatalogSnapshot 写入商城目录快照
func SetCatalogSnapshot(ctx context.Context, snapshot interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, catalogSnapshotKey, snapshot, ttl)
}

// InvalidateCatalog 目录或库存变更后失效快照
func InvalidateCatalog(ctx context.Context) error {
	return Del(ctx, catalogSnapshotKey)
}
