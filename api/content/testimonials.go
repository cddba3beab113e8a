package content

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (crm *ContentRoutesManager) FetchTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := crm.testimonialService.ListApproved(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch testimonials", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(testimonials),
		gecho.Send(),
	)
}

// SubmitTestimonial stores an unapproved testimonial for an existing order code.
func (crm *ContentRoutesManager) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.TestimonialRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to submit testimonial", crm.logger, w)
		return
	}

	testimonial, err := crm.testimonialService.Submit(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Gagal mengirim testimoni", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Terima kasih! Testimoni akan tampil setelah disetujui."),
		gecho.WithData(testimonial),
		gecho.Send(),
	)
}
