// Package toast provides user-visible acknowledgements for the registration
// form.
//
// Toasts are custom events handed to an Emitter. The WebSocket session turns
// them into "toast" frames, the terminal adapter prints them, and tests
// record them. The thin client dispatches a window event named
// "regform:toast" whose detail carries the level and message, so any toast UI
// can be plugged in:
//
//	window.addEventListener("regform:toast", (e) => {
//	    const { level, message } = e.detail;
//	    showToast(level, message);
//	});
//
// # Usage
//
//	toast.Success(session, "Форма успешно отправлена!")
//	toast.Error(session, "Не удалось отправить форму")
package toast
