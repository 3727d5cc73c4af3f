package auth

import "github.com/hitoshi/rollcall/internal/model"

// RegistrationRolePolicy は自己登録時にクライアントが要求したロールを
// そのまま採用してよいか判断する。
//
// 要求ロールの自己申告をどこまで許すかは運用判断のため、判断箇所をこの型に
// 集約し、呼び出し側を変更せずに許可セットを絞り込めるようにしている。
// 許可セットにadminを含める場合、未認証のクライアントがadminとして
// 登録できる点に注意すること。
type RegistrationRolePolicy struct {
	allowed map[model.Role]bool
}

// NewRegistrationRolePolicy は許可ロールセットからポリシーを生成する。
func NewRegistrationRolePolicy(allowed []model.Role) *RegistrationRolePolicy {
	m := make(map[model.Role]bool, len(allowed))
	for _, role := range allowed {
		m[role] = true
	}
	return &RegistrationRolePolicy{allowed: m}
}

// Resolve は要求ロールから実際に登録するロールを決定する。
// requestedが空、閉じた列挙に含まれない、または許可セット外の場合は
// デフォルトのstudentに落とす。
func (p *RegistrationRolePolicy) Resolve(requested string) model.Role {
	role, ok := model.ParseRole(requested)
	if !ok || !p.allowed[role] {
		return model.RoleStudent
	}
	return role
}
