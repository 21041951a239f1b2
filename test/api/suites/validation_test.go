package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/apitest/test/api"
)

var _ = Describe("User Validation", Label(api.LabelAPI, api.LabelNegative), func() {
	Context("When creating a user with bad input", func() {
		It("should reject a missing email", func() {
			// Given: a payload without an email field
			payload := api.NewUniqueUserPayload(credentials).WithoutField("email").Build()

			// When: I create the user
			response, err := client.CreateUser(ctx, payload)
			Expect(err).NotTo(HaveOccurred())
			api.ScheduleUserCleanup(client, ctx, response)

			// Then: the request is rejected and the error names the email field
			Expect(response).To(api.HaveStatus(http.StatusBadRequest))
			Expect(response).To(api.MentionField("email"))
		})

		It("should reject invalid user data", func() {
			response, err := client.CreateUser(ctx, api.InvalidUserData())
			Expect(err).NotTo(HaveOccurred())
			api.ScheduleUserCleanup(client, ctx, response)

			Expect(response.StatusCode).To(BeNumerically(">=", 400))
			Expect(response.StatusCode).To(BeNumerically("<", 500))
			Expect(response).To(api.MentionField("email"))
		})
	})
})
