package omz

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/YgNiko/openvino-prep/pkg/types"
)

// InfoCache persists info dumper output per model so repeated commands do not
// pay a tool invocation. Entries are invalidated only explicitly: model zoo
// metadata changes with toolkit releases, not over time.
type InfoCache struct {
	db *leveldb.DB
}

func OpenInfoCache(path string) (*InfoCache, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &InfoCache{db: db}, nil
}

func (c *InfoCache) Get(name string) (*types.ModelInfo, bool, error) {
	raw, err := c.db.Get([]byte(name), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	info := &types.ModelInfo{}
	if err := json.Unmarshal(raw, info); err != nil {
		return nil, false, err
	}
	return info, true, nil
}

func (c *InfoCache) Put(info types.ModelInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.db.Put([]byte(info.Name), raw, nil)
}

func (c *InfoCache) Delete(name string) error {
	return c.db.Delete([]byte(name), nil)
}

func (c *InfoCache) Close() error {
	return c.db.Close()
}

// CachedInfo returns model metadata, consulting the cache first unless refresh
// is set. A nil cache degrades to a plain dump.
func CachedInfo(ctx context.Context, tool Tool, cache *InfoCache, name string, refresh bool) (*types.ModelInfo, error) {
	if cache != nil && !refresh {
		if info, ok, err := cache.Get(name); err != nil {
			return nil, err
		} else if ok {
			return info, nil
		}
	}
	info, err := DumpOne(ctx, tool, name)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if err := cache.Put(*info); err != nil {
			return nil, err
		}
	}
	return info, nil
}
