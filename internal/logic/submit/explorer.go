package submit

import (
	"net/url"
	"strings"

	"tx-submitter-sol/internal/consts"
	"tx-submitter-sol/pkg/logger"
)

const (
	ClusterMainnet = "mainnet-beta"
	ClusterDevnet  = "devnet"
	ClusterTestnet = "testnet"
	ClusterCustom  = "custom"
)

type ExplorerOption struct {
	BaseURL  string
	Cluster  string // 为空时按 Endpoint 推断
	Endpoint string
}

// InferCluster 根据 RPC 地址推断 explorer 的 cluster 参数，本地或私有节点视为 custom
func InferCluster(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ClusterCustom
	}
	switch u.Hostname() {
	case hostOf(consts.MainnetEndpoint):
		return ClusterMainnet
	case hostOf(consts.DevnetEndpoint):
		return ClusterDevnet
	case hostOf(consts.TestnetEndpoint):
		return ClusterTestnet
	default:
		return ClusterCustom
	}
}

func hostOf(endpoint string) string {
	u, _ := url.Parse(endpoint)
	return u.Hostname()
}

// ResolveCluster 返回最终使用的 cluster；显式配置与 endpoint 不一致时告警
func (o ExplorerOption) ResolveCluster() string {
	inferred := InferCluster(o.Endpoint)
	if o.Cluster == "" {
		return inferred
	}
	if o.Cluster != inferred {
		logger.Warnf("[Explorer] 配置的 cluster=%s 与 RPC endpoint=%s (推断为 %s) 不一致，浏览器链接可能查不到该交易",
			o.Cluster, o.Endpoint, inferred)
	}
	return o.Cluster
}

// TxURL 生成交易在区块浏览器中的链接
func (o ExplorerOption) TxURL(signature string) string {
	base := strings.TrimRight(o.BaseURL, "/")
	if base == "" {
		base = consts.DefaultExplorerURL
	}
	link := base + "/tx/" + url.PathEscape(signature)

	q := url.Values{}
	switch cluster := o.ResolveCluster(); cluster {
	case ClusterMainnet:
	case ClusterCustom:
		q.Set("cluster", ClusterCustom)
		q.Set("customUrl", o.Endpoint)
	default:
		q.Set("cluster", cluster)
	}
	if len(q) > 0 {
		link += "?" + q.Encode()
	}
	return link
}
