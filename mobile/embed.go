//go:build mobile

// 移动端资源嵌入声明，仅在使用 -tags mobile 构建时编译
package mobile

import "embed"

//go:embed data/combat.yaml
var dataFS embed.FS
