package asset

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/shouni/netarmor/securenet"
)

const schemeGCS = "gs"

// IPResolver はホスト名を IP アドレスに解決します。net.DefaultResolver が満たします。
// 未指定の場合、ホスト名の検証は httpkit と同じ securenet に委ねます。
type IPResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// IsSafeURL は、SSRF (Server-Side Request Forgery) 対策として URL を検証します。
// gs:// はそのまま許可し、http/https はプライベートIPやループバックアドレスを
// ターゲットにしていないことを確認します。IP リテラルは名前解決せずに判定します。
func IsSafeURL(ctx context.Context, resolver IPResolver, rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	switch parsedURL.Scheme {
	case schemeGCS:
		if parsedURL.Host == "" {
			return false, fmt.Errorf("バケット名がありません: %s", rawURL)
		}
		return true, nil
	case "http", "https":
	default:
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	if host == "" {
		return false, fmt.Errorf("ホストがありません: %s", rawURL)
	}
	if ip := net.ParseIP(host); ip != nil {
		if err := checkIP(ip); err != nil {
			return false, err
		}
		return true, nil
	}

	if resolver == nil {
		return securenet.IsSafeURL(rawURL)
	}
	addrs, err := resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
	}
	for _, addr := range addrs {
		if err := checkIP(addr.IP); err != nil {
			return false, err
		}
	}
	return true, nil
}

func checkIP(ip net.IP) error {
	if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
	}
	return nil
}
