// Package auth は認証・ロール認可のコアロジックを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/rollcall/internal/model"
	"github.com/hitoshi/rollcall/internal/repository"
)

// emailPattern はメールアドレスの形式チェック。
// 既存データとの互換のため意図的に緩い判定にしている。
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// LoginStatus はログインフローの到達状態を表す。
type LoginStatus string

const (
	// LoginVerified は全検証を通過しクレームが発行された状態。
	LoginVerified LoginStatus = "verified"
	// LoginChallengePending はパスワード検証後、二要素認証の完了待ちの状態。
	// クレームはまだ発行されていない。
	LoginChallengePending LoginStatus = "challenge_pending"
)

// LoginResult はログインの結果を表す。
// StatusがLoginVerifiedのときのみTokenが設定され、
// LoginChallengePendingのときはChallengeIDのみが設定される。
type LoginResult struct {
	Status      LoginStatus
	User        *model.User
	Token       string
	ChallengeID string
}

// TwoFactorGate はパスワード検証後・クレーム発行前の拡張ポイント。
// ログイン状態機械の PasswordVerified → ChallengePending 遷移を担う。
// 完全な二要素認証ロジックはこのコアの範囲外であり、インターフェースのみを定義する。
type TwoFactorGate interface {
	// Required は該当アカウントで二要素認証が必要かどうかを返す。
	Required(ctx context.Context, user *model.User) bool
	// Begin はチャレンジを開始し、短命のチャレンジ参照を返す。
	Begin(ctx context.Context, user *model.User) (string, error)
}

// MetricsRecorder は認証イベントのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordRegistration(role model.Role)
	RecordLoginSuccess(role model.Role)
	RecordLoginFailure(reason string)
	RecordRoleMismatch()
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	PasswordMinLength int // パスワードの最小文字数
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users     repository.UserRepository
	hasher    *PasswordHasher
	issuer    *TokenIssuer
	policy    *RegistrationRolePolicy
	twoFactor TwoFactorGate   // nilの場合は二要素認証なし
	metrics   MetricsRecorder // nilの場合は記録しない
	config    ServiceConfig

	// dummyHash はメールアドレス未登録時にも検証と同等のコストを消費するための
	// ダミーハッシュ。未登録とパスワード不一致の応答時間差を埋める。
	dummyHash string
}

// NewService はServiceを生成する。
// twoFactorとmetricsはnilを許容する。
func NewService(
	users repository.UserRepository,
	hasher *PasswordHasher,
	issuer *TokenIssuer,
	policy *RegistrationRolePolicy,
	twoFactor TwoFactorGate,
	metrics MetricsRecorder,
	config ServiceConfig,
) (*Service, error) {
	dummy, err := hasher.Hash("rollcall-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		policy:    policy,
		twoFactor: twoFactor,
		metrics:   metrics,
		config:    config,
		dummyHash: dummy,
	}, nil
}

// Register は新規アカウントを作成し、セッショントークンを発行する。
// 登録ロールはRegistrationRolePolicyが決定し、クレームには保存されたロールのみが入る。
func (s *Service) Register(ctx context.Context, email, password, requestedRole string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", model.NewValidationError("メールアドレスとパスワードは必須です。")
	}

	email = model.NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, "", model.NewValidationError("メールアドレスの形式が正しくありません。")
	}

	if len(password) < s.config.PasswordMinLength {
		return nil, "", model.NewValidationError(
			fmt.Sprintf("パスワードは%d文字以上で入力してください。", s.config.PasswordMinLength))
	}

	// 事前チェック。最終的な一意性保証はストレージのユニークインデックスが担う。
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewDuplicateAccountError()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         s.policy.Resolve(requestedRole),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicateEmail {
			// 事前チェックとINSERTの間に同時登録が割り込んだ場合もここに集約される
			return nil, "", model.NewDuplicateAccountError()
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	// クレームのロールは常に保存済みの値から取る
	token, err := s.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("role", string(user.Role)),
	)
	if s.metrics != nil {
		s.metrics.RecordRegistration(user.Role)
	}

	return user, token, nil
}

// Login は資格情報とロール選択を検証し、セッショントークンを発行する。
//
// 検証順序は契約として固定されている:
//  1. 入力検証（ロール列挙チェックを含む）
//  2. アカウント検索（未登録はパスワード不一致と同一のエラー・同等のレイテンシ）
//  3. パスワード検証
//  4. ロール一致チェック（パスワード検証の後にのみ実行する。
//     本人確認前のロール情報の漏えいを防ぐため、この順序を変えてはならない）
//  5. 二要素認証ゲート（設定されている場合）
//  6. クレーム発行（ロールは常にDBの値）
func (s *Service) Login(ctx context.Context, email, password, selectedRole string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, model.NewValidationError("メールアドレスとパスワードは必須です。")
	}
	if selectedRole == "" {
		return nil, model.NewValidationError("ロールを選択してください。")
	}

	role, ok := model.ParseRole(selectedRole)
	if !ok {
		return nil, model.NewInvalidRoleError()
	}

	email = model.NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if user == nil {
		// 未登録でもハッシュ検証と同等の時間を消費し、応答時間からの
		// アカウント列挙を防ぐ
		s.hasher.Verify(password, s.dummyHash)
		s.recordLoginFailure("unknown_email")
		return nil, model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordLoginFailure("wrong_password")
		return nil, model.NewInvalidCredentialsError()
	}

	if !user.IsActive {
		// 無効化済みアカウント。状態を漏らさないよう資格情報エラーに揃える
		slog.Info("login attempt for inactive account",
			slog.String("user_id", user.ID),
		)
		s.recordLoginFailure("inactive_account")
		return nil, model.NewInvalidCredentialsError()
	}

	if user.Role != role {
		// パスワードによる本人確認済みのため、意図的に詳細なエラーを返す
		slog.Warn("role mismatch attempt",
			slog.String("user_id", user.ID),
			slog.String("email", user.Email),
			slog.String("actual_role", string(user.Role)),
			slog.String("selected_role", string(role)),
			slog.Time("timestamp", time.Now()),
		)
		if s.metrics != nil {
			s.metrics.RecordRoleMismatch()
		}
		return nil, model.NewRoleMismatchError(user.Role, role)
	}

	// PasswordVerified → ChallengePending: 二要素認証が必要な場合は
	// クレームを発行せず、チャレンジ参照のみを返す
	if s.twoFactor != nil && s.twoFactor.Required(ctx, user) {
		challengeID, err := s.twoFactor.Begin(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to begin two-factor challenge: %w", err)
		}
		slog.Info("two-factor challenge issued",
			slog.String("user_id", user.ID),
		)
		return &LoginResult{
			Status:      LoginChallengePending,
			User:        user,
			ChallengeID: challengeID,
		}, nil
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("role", string(user.Role)),
	)
	if s.metrics != nil {
		s.metrics.RecordLoginSuccess(user.Role)
	}

	return &LoginResult{
		Status: LoginVerified,
		User:   user,
		Token:  token,
	}, nil
}

// CurrentUser は検証済みクレームのアカウントIDから現在のアカウント情報を取得する。
// ロールや有効フラグは変更されている可能性があるため、クレームの値を信用せず再取得する。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	if !user.IsActive {
		return nil, model.NewInvalidSessionError()
	}
	return user, nil
}

func (s *Service) recordLoginFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RecordLoginFailure(reason)
	}
}
