package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/apitest/test/api"
)

var _ = Describe("Authentication", Label(api.LabelAPI, api.LabelAuth), func() {
	Context("When logging in", func() {
		It("should issue a token for valid credentials", Label(api.LabelSmoke), func() {
			// Given: the configured test credentials
			// When: I log in
			response, err := client.Login(ctx, api.LoginPayload(credentials))

			// Then: the login succeeds and a token is returned
			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(api.HaveStatus(http.StatusOK))
			Expect(response).To(api.HaveJSONKey("token"))
		})

		It("should reject invalid credentials", Label(api.LabelNegative), func() {
			payload := api.LoginRequest{
				Username: credentials.Username,
				Password: "wrong-" + api.GenerateTestID(),
			}

			response, err := client.Login(ctx, payload)

			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(api.HaveStatus(http.StatusUnauthorized))
		})
	})
})
