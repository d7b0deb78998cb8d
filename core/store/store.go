// Package store 抽象客户端本地持久化，存放令牌、用户快照与界面偏好。
package store

// 本地存储使用的键名，与浏览器端历史实现保持一致。
const (
	KeyAuthToken   = "authToken"
	KeyCurrentUser = "currentUser"
	KeyTheme       = "theme"
)

// KeyValue 抽象字符串键值持久化。Get 的第二个返回值表示键是否存在，
// 不存在不是错误。
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
