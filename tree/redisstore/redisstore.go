/*
Package redisstore provides a tree.NodeStore backed by redis.

Nodes of a tree are stored under keys "<prefix>:<nodeID>" and the header
of the tree (its ID, root ID, features and classes) under "<prefix>:tree",
so a tree grown into redis can be loaded back with LoadTree.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
	tjson "github.com/go2starr/cs540-d-tree/tree/json"
	"github.com/google/uuid"
	"gopkg.in/redis.v5"
)

const headerKey = "tree"

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec tjson.NodeEncodeDecoder
}

//New builds a tree.NodeStore backed by a redis DB
func New(rc *redis.Client, prefix string, nencdec tjson.NodeEncodeDecoder) tree.NodeStore {
	return &redisStore{rc, prefix, nencdec}
}

func (rs *redisStore) Create(ctx context.Context, n tree.Node) error {
	h := n.Head()
	var ok bool
	for !ok {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.ID = uuid.New().String()
		data, err := rs.nencdec.Encode(n)
		if err != nil {
			return fmt.Errorf("creating node: encoding node: %v", err)
		}
		ok, err = rs.rc.SetNX(rs.keyFor(h.ID), data, 0).Result()
		if err != nil {
			return fmt.Errorf("creating node in redis: %v", err)
		}
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (tree.Node, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: %v", id, err)
	}
	n, err := rs.nencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: decoding %q: %v", id, data, err)
	}
	return n, nil
}

func (rs *redisStore) Store(ctx context.Context, n tree.Node) error {
	redisID := rs.keyFor(n.Head().ID)
	data, err := rs.nencdec.Encode(n)
	if err != nil {
		return fmt.Errorf("storing node %q: encoding node: %v", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing node %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, n tree.Node) error {
	redisID := rs.keyFor(n.Head().ID)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting node %q from redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(id string) string {
	return keyFor(rs.prefix, id)
}

func keyFor(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

/*
SaveHeader takes a redis client, a prefix and a tree and stores the
header of the tree under the prefix, so that LoadTree can retrieve it.
*/
func SaveHeader(rc *redis.Client, prefix string, t *tree.Tree) error {
	data, err := tjson.MarshalHeader(t)
	if err != nil {
		return fmt.Errorf("encoding tree header: %v", err)
	}
	_, err = rc.Set(keyFor(prefix, headerKey), data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree header in redis: %v", err)
	}
	return nil
}

/*
LoadTree takes a redis client, a prefix and a feature.Registry and returns
the tree whose header was saved with SaveHeader under the prefix, backed by
a redis NodeStore on the same prefix. The tree's features are interned in
the registry.
*/
func LoadTree(rc *redis.Client, prefix string, reg *feature.Registry) (*tree.Tree, error) {
	data, err := rc.Get(keyFor(prefix, headerKey)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("no tree stored under %s", prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree header: %v", err)
	}
	t := &tree.Tree{}
	err = tjson.UnmarshalHeader([]byte(data), t, reg)
	if err != nil {
		return nil, fmt.Errorf("decoding tree header: %v", err)
	}
	t.NodeStore = New(rc, prefix, tjson.NewNodeEncodeDecoder(t.Features))
	return t, nil
}
