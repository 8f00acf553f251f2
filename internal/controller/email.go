package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/constant"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/view"
)

type emailGateway interface {
	CheckAuth(ctx context.Context) (*model.EmailAuthStatus, error)
	ProcessEmails(ctx context.Context, input gateway.ProcessEmailsInput) (*model.EmailProcessResult, error)
	GetEmailDetail(ctx context.Context, messageID, email string) (*model.EmailDetail, error)
	AuthURL() string
}

type EmailController struct {
	*baseController
	api emailGateway
}

// accountCookie remembers the last processed mailbox across visits.
const accountCookie = "bid_mail_account"

const accountCookieMaxAge = 30 * 24 * 60 * 60

type emailsData struct {
	view.Page
	Auth            model.EmailAuthStatus
	AuthURL         string
	SelectedAccount string
	Query           string
	MaxResults      int
	Result          *model.EmailProcessResult
}

type emailDetailData struct {
	view.Page
	Detail  model.EmailDetail
	Account string
	BackURL string
}

func (ec EmailController) Show(ctx *gin.Context) {
	auth, err := ec.api.CheckAuth(ctx.Request.Context())
	if err != nil {
		ec.renderError(ctx, "Process Emails", err, "/")
		return
	}

	ctx.HTML(http.StatusOK, "emails.tmpl", emailsData{
		Page:            view.Page{Title: "Process Emails"},
		Auth:            *auth,
		AuthURL:         ec.api.AuthURL(),
		SelectedAccount: ec.rememberedAccount(ctx, auth.Accounts),
		Query:           constant.DefaultEmailQuery,
		MaxResults:      constant.DefaultEmailMaxResults,
	})
}

func (ec EmailController) Process(ctx *gin.Context) {
	account := ctx.PostForm("email")
	query := ctx.PostForm("query")
	maxResults, err := strconv.Atoi(ctx.PostForm("max_results"))
	if err != nil {
		maxResults = constant.DefaultEmailMaxResults
	}

	auth, err := ec.api.CheckAuth(ctx.Request.Context())
	if err != nil {
		ec.renderError(ctx, "Process Emails", err, "/emails/process")
		return
	}

	result, err := ec.api.ProcessEmails(ctx.Request.Context(), gateway.ProcessEmailsInput{
		Email:      account,
		Query:      query,
		MaxResults: maxResults,
	})
	if err != nil {
		ec.renderError(ctx, "Process Emails", err, "/emails/process")
		return
	}

	ec.rememberAccount(ctx, account)

	ctx.HTML(http.StatusOK, "emails.tmpl", emailsData{
		Page:            view.Page{Title: "Process Emails"},
		Auth:            *auth,
		AuthURL:         ec.api.AuthURL(),
		SelectedAccount: account,
		Query:           query,
		MaxResults:      maxResults,
		Result:          result,
	})
}

func (ec EmailController) Detail(ctx *gin.Context) {
	messageID := ctx.Param("messageId")
	account := ctx.Query("account")

	detail, err := ec.api.GetEmailDetail(ctx.Request.Context(), messageID, account)
	if err != nil {
		ec.renderError(ctx, "Email", err, "/emails/process")
		return
	}

	ctx.HTML(http.StatusOK, "email_detail.tmpl", emailDetailData{
		Page:    view.Page{Title: detail.Subject},
		Detail:  *detail,
		Account: account,
		BackURL: "/emails/process",
	})
}

func (ec EmailController) rememberAccount(ctx *gin.Context, account string) {
	token, err := ec.app.MailSession.IssueAccountToken(account)
	if err != nil {
		ec.app.Logger.Debugf("Failed to issue account token: %v", err)
		return
	}
	ctx.SetCookie(accountCookie, token, accountCookieMaxAge, "/", "", ec.app.Config.IsProduction(), true)
}

// rememberedAccount returns the cookie's account only when the backend
// still holds credentials for it.
func (ec EmailController) rememberedAccount(ctx *gin.Context, accounts []string) string {
	token, err := ctx.Cookie(accountCookie)
	if err != nil {
		return ""
	}
	account, err := ec.app.MailSession.VerifyAccountToken(token)
	if err != nil {
		ec.app.Logger.Debugf("Stale account cookie: %v", err)
		return ""
	}
	for _, a := range accounts {
		if a == account {
			return account
		}
	}
	return ""
}
