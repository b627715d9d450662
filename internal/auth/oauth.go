/**
* Name: 			oauth.go
* Description: 		OAuth 프로바이더 레지스트리 (Google / Microsoft / Zoho)
* Workflow: 		인가 URL 생성 → code 교환 → 프로필 조회
 */

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/config"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")
	ErrProviderDisabled    = errors.New("oauth provider not configured")
	ErrEmailNotVerified    = errors.New("provider email not verified")
)

// Profile 프로바이더에서 확인된 신원, 세션 생성의 재료
type Profile struct {
	Email string
	Name  string
}

type profileFetcher func(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) (*Profile, error)

// Provider 단일 OAuth 프로바이더
type Provider struct {
	name         string
	conf         *oauth2.Config
	fetchProfile profileFetcher
}

func (p *Provider) Name() string { return p.name }

// AuthCodeURL state를 포함한 인가 페이지 URL
func (p *Provider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange 인가 코드를 액세스 토큰으로 교환
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.conf.Exchange(ctx, code)
}

// FetchProfile 토큰으로 이메일/이름 조회
func (p *Provider) FetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	return p.fetchProfile(ctx, p.conf, tok)
}

// Registry 설정된 프로바이더만 보관, 미설정/미지원은 조회 시 에러
type Registry struct {
	providers map[string]*Provider
}

func NewRegistry(cfg config.OAuthConfig) *Registry {
	providers := make(map[string]*Provider)

	if cfg.Google.Configured() {
		providers["google"] = &Provider{
			name: "google",
			conf: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  cfg.Google.RedirectURL,
				Endpoint:     google.Endpoint,
				Scopes: []string{
					"https://www.googleapis.com/auth/userinfo.email",
					"https://www.googleapis.com/auth/userinfo.profile",
				},
			},
			fetchProfile: fetchGoogleProfile,
		}
	}

	if cfg.Microsoft.Configured() {
		providers["microsoft"] = &Provider{
			name: "microsoft",
			conf: &oauth2.Config{
				ClientID:     cfg.Microsoft.ClientID,
				ClientSecret: cfg.Microsoft.ClientSecret,
				RedirectURL:  cfg.Microsoft.RedirectURL,
				Endpoint:     microsoft.AzureADEndpoint(cfg.MSTenant),
				Scopes:       []string{"openid", "profile", "email", "User.Read"},
			},
			fetchProfile: fetchMicrosoftProfile,
		}
	}

	if cfg.Zoho.Configured() {
		providers["zoho"] = &Provider{
			name: "zoho",
			conf: &oauth2.Config{
				ClientID:     cfg.Zoho.ClientID,
				ClientSecret: cfg.Zoho.ClientSecret,
				RedirectURL:  cfg.Zoho.RedirectURL,
				Endpoint: oauth2.Endpoint{
					AuthURL:  cfg.ZohoAccountsURL + "/oauth/v2/auth",
					TokenURL: cfg.ZohoAccountsURL + "/oauth/v2/token",
				},
				Scopes: []string{"AaaServer.profile.READ"},
			},
			fetchProfile: zohoProfileFetcher(cfg.ZohoAccountsURL),
		}
	}

	return &Registry{providers: providers}
}

// Get 미지원 프로바이더와 미설정 프로바이더를 구분해서 거부
func (r *Registry) Get(name string) (*Provider, error) {
	switch name {
	case "google", "microsoft", "zoho":
	default:
		return nil, ErrUnsupportedProvider
	}

	provider, ok := r.providers[name]
	if !ok {
		return nil, ErrProviderDisabled
	}
	return provider, nil
}

// Google은 공식 API 클라이언트로 userinfo 조회
func fetchGoogleProfile(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) (*Profile, error) {
	svc, err := goauth2.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("google userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, errors.New("google userinfo: empty email")
	}
	if info.VerifiedEmail != nil && !*info.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	return &Profile{Email: info.Email, Name: info.Name}, nil
}

func fetchMicrosoftProfile(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) (*Profile, error) {
	var me struct {
		DisplayName       string `json:"displayName"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := getJSON(ctx, conf, tok, "https://graph.microsoft.com/v1.0/me", &me); err != nil {
		return nil, fmt.Errorf("microsoft graph me: %w", err)
	}

	// 개인 계정은 mail이 비어 있고 UPN에 이메일이 들어옴
	email := me.Mail
	if email == "" {
		email = me.UserPrincipalName
	}
	if email == "" {
		return nil, errors.New("microsoft graph me: empty email")
	}

	return &Profile{Email: email, Name: me.DisplayName}, nil
}

func zohoProfileFetcher(accountsURL string) profileFetcher {
	return func(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) (*Profile, error) {
		var info struct {
			Email       string `json:"Email"`
			DisplayName string `json:"Display_Name"`
			FirstName   string `json:"First_Name"`
		}
		if err := getJSON(ctx, conf, tok, accountsURL+"/oauth/user/info", &info); err != nil {
			return nil, fmt.Errorf("zoho user info: %w", err)
		}
		if info.Email == "" {
			return nil, errors.New("zoho user info: empty email")
		}

		name := info.DisplayName
		if name == "" {
			name = info.FirstName
		}
		return &Profile{Email: info.Email, Name: name}, nil
	}
}

func getJSON(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := conf.Client(ctx, tok).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
