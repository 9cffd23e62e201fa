// Package models — ServerRole: sunucu erişim rolü.
//
// Erişim kontrolü "owner mı, member mı" ikilisinin dağınık boolean
// kontrolleriyle değil, TEK seferde çözülen bir tagged enum ile modellenir.
// Repository ResolveRole ile rolü bir kez hesaplar; middleware ve service
// katmanları enum üzerinden karar verir.
package models

// ServerRole, bir admin'in bir sunucu üzerindeki erişim rolü.
type ServerRole string

// İzin verilen ServerRole değerleri.
//
// RoleNone "erişim yok" demektir — sunucu hiç yoksa da RoleNone döner.
// İkisi bilinçli olarak ayırt EDİLMEZ: üye olmayan bir admin sunucunun
// varlığını öğrenememelidir.
const (
	RoleOwner  ServerRole = "owner"
	RoleMember ServerRole = "member"
	RoleNone   ServerRole = "none"
)

// IsMember, rolün okuma erişimi verip vermediğini döner.
// Owner her zaman member'dır — sıfır server_admins satırıyla bile.
func (r ServerRole) IsMember() bool {
	return r == RoleOwner || r == RoleMember
}

// IsOwner, rolün mutasyon (silme, webhook yenileme, üye yönetimi)
// yetkisi verip vermediğini döner.
func (r ServerRole) IsOwner() bool {
	return r == RoleOwner
}
