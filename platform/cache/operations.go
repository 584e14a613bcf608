package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Del(conn redis.Conn, keys ...string) error {
	_, err := conn.Do("DEL", redis.Args{}.AddFlat(keys)...)
	return err
}

func HSET(conn redis.Conn, key string, field string, value interface{}) error {
	_, err := conn.Do("HSET", key, field, value)
	return err
}

func HGET(conn redis.Conn, key string, field string) ([]byte, error) {
	return redis.Bytes(conn.Do("HGET", key, field))
}

func RPUSH(conn redis.Conn, key string, values ...interface{}) error {
	_, err := conn.Do("RPUSH", redis.Args{}.Add(key).AddFlat(values)...)
	return err
}

func LGET(conn redis.Conn, key string) ([]string, error) {
	return redis.Strings(conn.Do("LRANGE", key, 0, -1))
}

func LREM(conn redis.Conn, key string, val string) error {
	_, err := conn.Do("LREM", key, 0, val)
	return err
}
