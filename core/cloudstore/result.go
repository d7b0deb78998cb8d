package cloudstore

// Result 是数据访问层统一的返回包络：要么 Success 为真且 Data 有效，
// 要么 Success 为假且 Error 携带可读信息。调用方不得在失败时读取 Data。
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
}

// Ok 构造成功包络。
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail 构造失败包络。
func Fail[T any](message string) Result[T] {
	return Result[T]{Error: message}
}

// Nothing 用于没有返回数据的操作。
type Nothing = struct{}

// Done 构造无数据的成功包络。
func Done() Result[Nothing] {
	return Ok(Nothing{})
}
