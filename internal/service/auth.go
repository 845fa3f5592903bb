package service

// HostAuthorizer はユーザーがホスト権限を持つかを判定する述語です
// お題の選択や結果フェーズへの強制移行など、ホスト専用操作の前に評価されます
type HostAuthorizer func(username string) bool

// FixedHost は単一のホストユーザー名と一致するかで判定するHostAuthorizerを作成します
func FixedHost(hostUsername string) HostAuthorizer {
	return func(username string) bool { return username == hostUsername }
}
