package locale

import "golang.org/x/text/language"

// Translator localizes vulnerability names and scanner prose. Implementations
// wrap glossaries or external translation services; the report engine only
// depends on this interface.
type Translator interface {
	// Title returns the localized vulnerability name, or name unchanged
	// when no translation is known.
	Title(name string) string

	// Text returns localized free text, or text unchanged.
	Text(text string) string
}

// Identity leaves everything unchanged.
type Identity struct{}

// Title implements Translator.
func (Identity) Title(name string) string { return name }

// Text implements Translator.
func (Identity) Text(text string) string { return text }

// Glossary translates names through a fixed table and leaves prose alone.
type Glossary map[string]string

// Title implements Translator.
func (g Glossary) Title(name string) string {
	if t, ok := g[name]; ok && t != "" {
		return t
	}
	return name
}

// Text implements Translator.
func (Glossary) Text(text string) string { return text }

// TranslatorFor returns the built-in translator for tag.
func TranslatorFor(tag language.Tag) Translator {
	if Match(tag) == language.TraditionalChinese {
		return TraditionalChineseGlossary()
	}
	return Identity{}
}

// TraditionalChineseGlossary returns the English to zh-Hant name table for
// common ZAP alerts.
func TraditionalChineseGlossary() Glossary {
	return Glossary{
		"Cross Site Scripting (Reflected)":                      "反射型跨站腳本攻擊 (XSS)",
		"Cross Site Scripting (Persistent)":                     "儲存型跨站腳本攻擊 (XSS)",
		"Cross Site Scripting (DOM Based)":                      "DOM 型跨站腳本攻擊 (XSS)",
		"SQL Injection":                                         "SQL 資料隱碼攻擊",
		"Path Traversal":                                        "路徑遍歷漏洞",
		"Remote File Inclusion":                                 "遠端檔案包含 (RFI)",
		"Server Side Include":                                   "伺服器端包含注入 (SSI)",
		"Buffer Overflow":                                       "緩衝區溢位",
		"Format String Error":                                   "格式化字串錯誤",
		"Cross-Site Request Forgery":                            "跨站請求偽造 (CSRF)",
		"Absence of Anti-CSRF Tokens":                           "缺乏 Anti-CSRF Token",
		"Directory Browsing":                                    "目錄遍歷/目錄瀏覽",
		"Application Error Disclosure":                          "應用程式錯誤資訊揭露",
		"Private IP Disclosure":                                 "內部 IP 位址洩漏",
		"Source Code Disclosure":                                "原始碼洩漏",
		"Weak Authentication Method":                            "身分驗證機制薄弱",
		"Session ID in URL Rewrite":                             "Session ID 暴露於 URL",
		"Missing Anti-clickjacking Header":                      "遺失防點擊劫持標頭 (Clickjacking)",
		"X-Frame-Options Header Not Set":                        "未設定 X-Frame-Options 標頭",
		"Cookie No HttpOnly Flag":                               "Cookie 遺失 HttpOnly 屬性",
		"Cookie Without Secure Flag":                            "Cookie 遺失 Secure 屬性",
		"Cloud IAM":                                             "Google Cloud 身分與存取管理",
		"CloudTrail":                                            "AWS 操作紀錄稽核服務",
		"X-Content-Type-Options Header Missing":                 "遺失 X-Content-Type-Options 標頭",
		"Strict-Transport-Security Header Not Set":              "未設定 HSTS 安全傳輸標頭",
		"Information Disclosure - Debug Error Messages":         "資訊洩漏 - 偵錯錯誤訊息",
		"Information Disclosure - Sensitive Information in URL": "資訊洩漏 - URL 包含敏感資訊",
		"Information Disclosure - Suspicious Comments":          "資訊洩漏 - 可疑的程式註解",
		"AWS Identity and Access Management (IAM)":              "AWS 身分與存取管理",
		"Amazon S3 (Simple Storage Service)":                    "Amazon S3 物件儲存服務",
	}
}
