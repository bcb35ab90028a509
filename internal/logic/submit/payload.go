package submit

import (
	"fmt"

	"github.com/near/borsh-go"
)

// messagePayload 与链上程序的 borsh 结构一致：u32 LE 长度 + UTF-8 字节
type messagePayload struct {
	Message string
}

// EncodePayload 生成指令数据；message 为空时返回显式的空字节序列
func EncodePayload(message string) ([]byte, error) {
	if message == "" {
		return []byte{}, nil
	}
	data, err := borsh.Serialize(messagePayload{Message: message})
	if err != nil {
		return nil, fmt.Errorf("borsh encode payload: %w", err)
	}
	return data, nil
}
