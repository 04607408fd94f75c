package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "进入交互模式")
		hexData     = flag.String("hex", "", "要解析的十六进制帧数据")
	)

	flag.Parse()

	if *interactive {
		runInteractiveMode()
	} else if *hexData != "" {
		parseHexFrame(*hexData)
	} else {
		fmt.Println("JT808协议解析工具")
		fmt.Println("用法:")
		fmt.Println("  jt808-parser -hex <十六进制帧数据>  - 解析指定的帧")
		fmt.Println("  jt808-parser -i                   - 进入交互模式")
		fmt.Println("\n示例:")
		fmt.Println("  jt808-parser -hex 7e000200000123456789010005057e")
	}
}

// runInteractiveMode 运行交互模式
func runInteractiveMode() {
	fmt.Println("JT808协议解析工具 - 交互模式")
	fmt.Println("输入十六进制帧数据进行解析，输入 'exit' 或 'quit' 退出")
	fmt.Println("----------------------------------------")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			break
		}
		if input == "" {
			continue
		}

		parseHexFrame(input)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "读取输入失败: %v\n", err)
	}
}

// parseHexFrame 解析一帧十六进制数据并打印结果
func parseHexFrame(input string) {
	cleaned := strings.NewReplacer(" ", "", "\t", "", "0x", "", "0X", "").Replace(input)
	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		fmt.Fprintf(os.Stderr, "非法的十六进制数据: %v\n", err)
		return
	}

	parsed := jt808.ParseFrame(raw)
	if parsed.Header != nil {
		header := parsed.Header
		fmt.Printf("消息: %s (0x%04X)\n", jt808.GetMessageName(header.MessageID), header.MessageID)
		fmt.Printf("终端手机号: %s\n", header.DeviceID)
		fmt.Printf("流水号: %d\n", header.SequenceNumber)
		fmt.Printf("协议版本: %s\n", header.ProtocolVersion)
		fmt.Printf("消息体长度: %d\n", header.BodyLength)
		if header.Fragment != nil {
			fmt.Printf("分包: %d/%d\n", header.Fragment.Current, header.Fragment.Total)
		}
	}

	if parsed.Error != nil {
		fmt.Fprintf(os.Stderr, "解析失败: %v\n", parsed.Error)
		return
	}

	if len(parsed.Fields) > 0 {
		pretty, err := json.MarshalIndent(parsed.Fields, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "字段序列化失败: %v\n", err)
			return
		}
		fmt.Printf("消息体字段:\n%s\n", pretty)
	}
}
