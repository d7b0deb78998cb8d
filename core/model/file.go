package model

// Folder 表示文件夹记录，owner 关联用户 ID。
type Folder struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// File 表示文件记录。StoredKey 是后端为二进制内容分配的存储键，
// 下载地址由文件 ID 与该键拼出。
type File struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Type      string `json:"type"`
	Folder    string `json:"folder"`
	Owner     string `json:"owner"`
	StoredKey string `json:"file"`
	Created   string `json:"created,omitempty"`
	Updated   string `json:"updated,omitempty"`
}
