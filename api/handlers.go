package api

import (
	"net/http"

	"unfair_dao/contract"
	"unfair_dao/sdk"

	"github.com/gin-gonic/gin"
)

var statusBySymbol = map[string]int{
	"already_exists":     http.StatusConflict,
	"not_found":          http.StatusNotFound,
	"unqualified":        http.StatusForbidden,
	"unauthorized":       http.StatusUnauthorized,
	"count_out_of_range": http.StatusUnprocessableEntity,
	"input_error":        http.StatusBadRequest,
	"conflict":           http.StatusConflict,
}

// StatusFor maps a contract error symbol to an http status.
func StatusFor(symbol string) int {
	if code, ok := statusBySymbol[symbol]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func (s *Server) call(c *gin.Context) {
	caller, err := sdk.ParsePubkey(c.GetHeader(CallerHeader))
	if err != nil || caller.IsZero() {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "missing or bad " + CallerHeader + " header", "symbol": "unauthorized"})
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error(), "symbol": "input_error"})
		return
	}
	s.respond(c, caller, c.Param("action"), string(body))
}

func (s *Server) listMembers(c *gin.Context) {
	s.respond(c, sdk.Pubkey{}, contract.ActionListMembers, "")
}

func (s *Server) getMember(c *gin.Context) {
	s.respond(c, sdk.Pubkey{}, contract.ActionGetMember, c.Param("wallet"))
}

func (s *Server) leaderboard(c *gin.Context) {
	s.respond(c, sdk.Pubkey{}, contract.ActionLeaderboard, c.Query("limit"))
}

func (s *Server) listProposals(c *gin.Context) {
	s.respond(c, sdk.Pubkey{}, contract.ActionListProposals, c.Query("author"))
}

func (s *Server) getProposal(c *gin.Context) {
	s.respond(c, sdk.Pubkey{}, contract.ActionGetProposal, c.Param("key"))
}

func (s *Server) listVotes(c *gin.Context) {
	s.respond(c, sdk.Pubkey{}, contract.ActionListVotes, c.Query("member"))
}

func (s *Server) respond(c *gin.Context, caller sdk.Pubkey, action, payload string) {
	res := s.dao.Call(c.Request.Context(), caller, action, payload)
	if res.IsErr() {
		err := res.UnwrapErr()
		symbol := contract.Symbol(err)
		code := StatusFor(symbol)
		if code == http.StatusInternalServerError {
			s.logger.Error("call failed", "action", action, "err", err)
		}
		c.JSON(code, gin.H{"err": err.Error(), "symbol": symbol})
		return
	}
	code := http.StatusOK
	if c.Request.Method == http.MethodPost {
		code = http.StatusCreated
		if isQuery(action) {
			code = http.StatusOK
		}
	}
	c.Data(code, "application/json; charset=utf-8", []byte(res.Unwrap()))
}

func isQuery(action string) bool {
	switch action {
	case contract.ActionRegisterMember, contract.ActionUpdateMember,
		contract.ActionSubmitProposal, contract.ActionVoteProposal:
		return false
	}
	return true
}
